package letters

import (
	"strings"

	"intake-backend/internal/intake"
)

// Letter bodies follow the greeting line. Only <strong> markup is allowed here;
// anything else would be escaped differently in the text and HTML parts.

const genericBody = "Thank you for your submission to City Life Pharmacy. We'll be in touch shortly."

const reviewedIntake = "Thank you for using City Life Pharmacy. I have reviewed your medical intake and I have put together the following treatment plan for you below. Please read it carefully."

const healthyLifestyle = "Taking GLP-1 medication like %s while taking steps toward maintaining a healthy diet and lifestyle can help you achieve your target weight."

const gasPedal = `Imagine your GLP-1 medication is like a gas pedal for your hunger. At first, you might need to press down a bit more (higher dose) to feel satisfied with less food and reach your weight loss goals. This helps you ease off the gas and eat less.

The good news is, as you keep using the medication, your body gets used to this setting (reaches steady-state). Once you've reached your goal weight or your cravings are under control at a specific dose, you don't need to keep pushing down on the gas pedal further (increasing the dose). You can keep your foot at that comfortable level (steady-state dose) to maintain your progress!

This means you can take your GLP-1 medication consistently at the same dose to keep your appetite in check and your weight loss on track. Talk to your doctor about when a steady-state dose might be the right "cruising speed" for you.`

const refillAndScreening = `<strong>*On your next refill order date, you will be asked a series of questions with your refill order, which will help me determine if you need to be increased, or kept at the same dose.*</strong>

<strong>*Please make sure to follow up with your primary care physician for routine screening including evaluation of your cholesterol levels, thyroid levels, and other routine lab testing.*</strong>`

const ineligibleList = `- Eating Disorder
- Gallbladder Disease (does not include gallbladder removal/cholecystectomy)
- Drug Abuse
- Alcohol Abuse
- Recent Bariatric Surgery
- Pancreatitis
- Personal or family history of medullary Thyroid Cancer
- Multiple endocrine neoplasia type 2 syndrome (MEN-2)
- Currently Pregnant
- Currently Breastfeeding
- Planning to Become Pregnant
- Retinopathy`

const sideEffects = "Nausea is most common in customers beginning treatment with %s. Other common side effects are abdominal pain, headaches, fatigue, constipation, diarrhea, dizziness, upset stomach, and heartburn. Please let us know if you are experiencing any adverse symptoms and call 911 or go to the emergency room if you feel like you are experiencing a medical emergency."

const signature = `Thank you and please reach out to us if you have any questions, concerns, or need further clarification.

Rimon
<strong>Pharmacist</strong>

City Life Pharmacy & Compounding Centre
info@CityLifePharmacy.com
www.CityLifePharmacy.com
Tel 416-214-CITY (2489)`

func risks(drug string) string {
	upper := strings.ToUpper(drug)
	return "<strong>WHO SHOULD NOT TAKE " + upper + "?</strong>\n" +
		"Patients to whom the following apply are not eligible for " + drug + " treatment:\n" +
		ineligibleList + "\n\n" +
		"<strong>WHAT ARE THE COMMON SIDE EFFECTS OF " + upper + "?</strong>\n" +
		"- " + strings.Replace(sideEffects, "%s", drug, 1)
}

func lifestyle(drug string) string {
	return strings.Replace(healthyLifestyle, "%s", drug, 1)
}

func paragraphs(parts ...string) string {
	return strings.Join(parts, "\n\n")
}

var bodies = map[intake.Medication]string{
	intake.MedicationQuickStrips: paragraphs(
		reviewedIntake,
		"You have been prescribed compounded semaglutide oral dissolving film.",
		"Oral dissolving films are a novel way to take semaglutide that allows you to receive the dose effectively and safely. They bypass the digestive tract, so more of the medication reaches your bloodstream without being broken down by stomach acid or the liver. This can also reduce the side effects of the medication.",
		lifestyle("semaglutide"),
		"Please note: Your prescription has been sent to the pharmacy for processing and fulfillment and should ship out within 3-4 business days.",
		gasPedal,
		refillAndScreening,
		"<strong>How should you take semaglutide strips?</strong>\nMake sure your hands are dry and clean before removing the strips. Remove the strip from its packaging and place it either under the tongue (sublingual) or between your gum and cheek (buccal). The strip starts dissolving almost immediately when it comes in contact with your saliva. Allow it to rest in place for 90 seconds before swallowing any remaining undissolved portion. You may drink water after this step although it is not necessary.",
		"<strong>What is the titration schedule with semaglutide strips?</strong>\nIn general, the starting dose is 0.5 mg taken once daily for one month. This allows your body to get used to the medication and lets us see whether you experience any side effects. The dose can be increased to 1 mg once daily for another month if you are tolerating the medication well, then to 2 mg and 3 mg once daily in the third and fourth month based on your response.",
		"<strong>How should semaglutide strips be stored?</strong>\nStore the medication at room temperature, away from light and moisture. A bedroom or living room is ideal as those areas are generally not exposed to fluctuations in temperature or moisture.",
		risks("semaglutide"),
		signature,
	),
	intake.MedicationDrops: paragraphs(
		reviewedIntake,
		"You have been prescribed compounded semaglutide sublingual drops.",
		lifestyle("semaglutide"),
		"Please note: Your prescription has been sent to the pharmacy for processing and fulfillment and should ship out within 2-3 business days.",
		gasPedal,
		refillAndScreening,
		risks("semaglutide"),
		"<strong>How do you take sublingual semaglutide drops?</strong>\nDraw up 1 ml using the syringe given to you and place the drops underneath the tongue once daily. Press down your tongue for at least 90 seconds to keep the liquid in place and allow for proper absorption. Do not eat or drink anything for at least half an hour after using the medication. The preferred time to use the medication is in the evening towards bed time.",
		"<strong>What is the titration schedule of semaglutide drops?</strong>\nThe general starting point is 0.5 mg once daily for 1 month. This first month gets your body used to the medication and shows whether any side effects occur. If well tolerated, the dose can be increased to 1 mg daily for a month and then possibly 2 mg and 3 mg in the third and fourth month based on response and tolerability. Months 2-3 are usually when most people start to see meaningful changes in their weight.",
		"<strong>How should semaglutide drops be stored?</strong>\nStore the medication at room temperature, away from light and moisture. A bedroom or living room is ideal as those areas are generally not exposed to fluctuations in temperature or moisture.",
		signature,
	),
	intake.MedicationTirzepatide: paragraphs(
		reviewedIntake,
		"You have been prescribed Mounjaro (tirzepatide). This medication typically follows a titration schedule that is outlined below. At your follow up your physician will determine if you are to increase, decrease, or stay at your current dose.",
		"<strong>Mounjaro Dosing Schedule:</strong>\nMonth 1: Inject 2.5 mg subcutaneously once weekly x 4 weeks\nMonth 2: Inject 5 mg subcutaneously once weekly x 4 weeks\nMonth 3: Inject 7.5 mg subcutaneously once weekly x 4 weeks\nMonth 4: Inject 10 mg subcutaneously once weekly x 4 weeks\nMonth 5: Inject 12.5 mg subcutaneously once weekly x 4 weeks\nMonth 6: Inject 15 mg subcutaneously once weekly x 4 weeks",
		lifestyle("tirzepatide"),
		"Please note: Your prescription has been sent to the pharmacy for processing and fulfillment and should ship out within 1-2 business days. Please store Mounjaro pens in the fridge. You may store them at room temperature for 21 days.",
		gasPedal,
		refillAndScreening,
		"<strong>Below is more detailed information about tirzepatide I would like you to review:</strong>",
		risks("tirzepatide"),
		"<strong>HOW SHOULD I TAKE MOUNJARO?</strong>\n- Mounjaro is injected subcutaneously, into the fat tissue right underneath your skin\n- The preferred injection sites are the abdomen (at least 2 inches away from the belly button) or the thigh\n- Rotate sites every week and do not inject the same spot 2 weeks in a row\n- Do not inject where the skin has pits, is thickened, or has lumps\n- Do not inject where the skin is tender, bruised, scaly or hard, or into scars or damaged skin\n- Each Mounjaro pen contains 4 doses (enough for a month)\n- To prepare for your injection, remove the pen from the refrigerator and wash your hands with soap and water\n- Check the pen to make sure you have the correct medication and that it is colourless or slightly yellow\n- Do not use the pen if it is frozen, cloudy, or has particles\n- We have attached detailed instructions on how to inject the medication to this email. Please follow these instructions.",
		signature,
	),
	intake.MedicationOzempic: paragraphs(
		reviewedIntake,
		"You have been prescribed Ozempic (semaglutide). This medication typically follows a titration schedule that is outlined below. At your follow up your physician will determine if you are to increase, decrease, or stay at your current dose.",
		"We have attached detailed instructions on how to inject Ozempic to this email. Please read it carefully.",
		"<strong>Ozempic Dosing Schedule:</strong>\nMonth 1: Inject 0.25 mg subcutaneously once weekly x 4 weeks\nMonth 2: Inject 0.5 mg subcutaneously once weekly x 4 weeks\nMonth 3: Inject 1 mg subcutaneously once weekly x 4 weeks\n*Follow up visit*\nMonth 4: Inject 1 mg subcutaneously once weekly x 4 weeks",
		"<strong>Wegovy Dosing Schedule:</strong>\nMonth 5: Inject 1.75 mg subcutaneously once weekly x 4 weeks\nMonth 6: Inject 2 mg subcutaneously once weekly x 4 weeks\n*Months 5 and 6 are dispensed as Wegovy to ensure the most cost effective semaglutide option.",
		lifestyle("semaglutide"),
		"Please note: Your prescription has been sent to the pharmacy for processing and fulfillment and should ship out within 1-2 business days. Please store Ozempic and Wegovy pens in the fridge until you are ready to use the medication. Once out of the fridge, they can be stored at room temperature for 56 days.",
		gasPedal,
		refillAndScreening,
		"<strong>Below is more detailed information about semaglutide I would like you to review:</strong>",
		risks("semaglutide"),
		signature,
	),
}
